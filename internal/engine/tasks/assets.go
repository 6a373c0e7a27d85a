package tasks

import (
	"context"
	"io"

	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/engine/pipeline"
)

func (tc *Toolchain) src(patterns []string) ([]domain.Asset, error) {
	return pipeline.Src(tc.Resolver, tc.Store, patterns)
}

// collect returns a stage appending the destination files of the batch to dst.
func collect(dir string, dst *[]string) pipeline.Stage {
	return pipeline.Tap(func(assets []domain.Asset) {
		*dst = append(*dst, pipeline.Targets(dir, assets)...)
	})
}

func (tc *Toolchain) html(ctx context.Context, out io.Writer) error {
	pages, err := tc.src(tc.Paths.Pages.Src)
	if err != nil {
		return err
	}
	partials, err := tc.src(tc.Paths.Partials)
	if err != nil {
		return err
	}

	dest := tc.Paths.Pages.Dest
	var written []string
	render := func(_ context.Context, page domain.Asset) (domain.Asset, error) {
		doc, err := tc.Markup.Render(page, partials)
		if err != nil {
			return domain.Asset{}, err
		}
		page.Contents = doc
		return page, nil
	}

	_, err = pipeline.Run(ctx, pages,
		pipeline.Map(render),
		pipeline.Rename(func(p string) string { return domain.ReplaceExt(p, ".html") }),
		pipeline.Dest(tc.Store, dest, out),
		collect(dest, &written),
	)
	if err != nil {
		return err
	}

	if urls := tc.Paths.URLPaths(written); len(urls) > 0 {
		tc.Reloader.Reload(urls...)
	}
	return nil
}

func (tc *Toolchain) cssCommon(ctx context.Context, out io.Writer) error {
	sources, err := tc.src(tc.Paths.Styles.Src)
	if err != nil {
		return err
	}

	dest := tc.Paths.Styles.Dest
	var written []string
	minify := func(ctx context.Context, a domain.Asset) (domain.Asset, error) {
		return tc.Styles.Minify(ctx, a, tc.Config.Styles.SourceMaps)
	}

	_, err = pipeline.Run(ctx, sources,
		pipeline.Concat(commonStyles, concatSeparator),
		pipeline.Map(tc.Styles.Compile),
		pipeline.Dest(tc.Store, dest, out),
		collect(dest, &written),
		pipeline.Rename(domain.MinName),
		pipeline.Map(minify),
		pipeline.Dest(tc.Store, dest, out),
		collect(dest, &written),
	)
	if err != nil {
		return err
	}

	if urls := tc.Paths.URLPaths(written); len(urls) > 0 {
		tc.Reloader.InjectCSS(urls...)
	}
	return nil
}

func (tc *Toolchain) jsCommon(ctx context.Context, out io.Writer) error {
	sources, err := tc.src(tc.Paths.Scripts.Src)
	if err != nil {
		return err
	}

	dest := tc.Paths.Scripts.Dest
	var written []string
	minify := func(ctx context.Context, a domain.Asset) (domain.Asset, error) {
		return tc.Scripts.Minify(ctx, a, tc.Config.Scripts.SourceMaps)
	}

	_, err = pipeline.Run(ctx, sources,
		pipeline.Concat(commonScripts, concatSeparator),
		pipeline.Dest(tc.Store, dest, out),
		collect(dest, &written),
		pipeline.Rename(domain.MinName),
		pipeline.Map(minify),
		pipeline.Dest(tc.Store, dest, out),
		collect(dest, &written),
	)
	if err != nil {
		return err
	}

	if urls := tc.Paths.URLPaths(written); len(urls) > 0 {
		tc.Reloader.Reload(urls...)
	}
	return nil
}

func (tc *Toolchain) cssVendor(ctx context.Context, out io.Writer) error {
	sources, err := tc.src(tc.Paths.VendorStyles.Src)
	if err != nil {
		return err
	}

	minify := func(ctx context.Context, a domain.Asset) (domain.Asset, error) {
		return tc.Styles.Minify(ctx, a, false)
	}
	_, err = pipeline.Run(ctx, sources,
		pipeline.Concat(vendorStyles, concatSeparator),
		pipeline.Map(minify),
		pipeline.Dest(tc.Store, tc.Paths.VendorStyles.Dest, out),
	)
	return err
}

func (tc *Toolchain) jsVendor(ctx context.Context, out io.Writer) error {
	sources, err := tc.src(tc.Paths.VendorScripts.Src)
	if err != nil {
		return err
	}

	minify := func(ctx context.Context, a domain.Asset) (domain.Asset, error) {
		return tc.Scripts.Minify(ctx, a, false)
	}
	_, err = pipeline.Run(ctx, sources,
		pipeline.Concat(vendorScripts, concatSeparator),
		pipeline.Map(minify),
		pipeline.Dest(tc.Store, tc.Paths.VendorScripts.Dest, out),
	)
	return err
}

func (tc *Toolchain) fontsVendor(ctx context.Context, out io.Writer) error {
	return tc.copy(ctx, tc.Paths.VendorFonts, out)
}

func (tc *Toolchain) img(ctx context.Context, out io.Writer) error {
	images, err := tc.src(tc.Paths.Images.Src)
	if err != nil {
		return err
	}

	compress := func(_ context.Context, a domain.Asset) (domain.Asset, error) {
		return tc.Images.Compress(a)
	}
	_, err = pipeline.Run(ctx, images,
		pipeline.Map(compress),
		pipeline.Dest(tc.Store, tc.Paths.Images.Dest, out),
	)
	return err
}

// copy writes every file matched by entry.Src into entry.Dest unchanged.
func (tc *Toolchain) copy(ctx context.Context, entry domain.PathEntry, out io.Writer) error {
	files, err := tc.src(entry.Src)
	if err != nil {
		return err
	}
	_, err = pipeline.Run(ctx, files, pipeline.Dest(tc.Store, entry.Dest, out))
	return err
}

package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/press/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/devserver"  //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/esbuild"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/imaging"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/livereload" //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/manifest"   //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/markup"     //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/press/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the CLI entry point needs.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			manifest.NodeID,
			logger.NodeID,
			fs.ResolverNodeID,
			fs.StoreNodeID,
			markup.NodeID,
			esbuild.StyleNodeID,
			esbuild.ScriptNodeID,
			imaging.NodeID,
			livereload.NodeID,
			devserver.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per adapter
func runAppNode(ctx context.Context) (*App, error) {
	var (
		ad  Adapters
		err error
	)

	if ad.ConfigLoader, err = graft.Dep[ports.ConfigLoader](ctx); err != nil {
		return nil, err
	}
	if ad.ManifestLoader, err = graft.Dep[ports.ManifestLoader](ctx); err != nil {
		return nil, err
	}
	if ad.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	if ad.Resolver, err = graft.Dep[ports.SourceResolver](ctx); err != nil {
		return nil, err
	}
	if ad.Store, err = graft.Dep[ports.FileStore](ctx); err != nil {
		return nil, err
	}
	if ad.Markup, err = graft.Dep[ports.MarkupRendererFactory](ctx); err != nil {
		return nil, err
	}
	if ad.Styles, err = graft.Dep[ports.StyleCompilerFactory](ctx); err != nil {
		return nil, err
	}
	if ad.Scripts, err = graft.Dep[ports.ScriptMinifierFactory](ctx); err != nil {
		return nil, err
	}
	if ad.Images, err = graft.Dep[ports.ImageCompressorFactory](ctx); err != nil {
		return nil, err
	}
	if ad.Reload, err = graft.Dep[ports.LiveReload](ctx); err != nil {
		return nil, err
	}
	if ad.Server, err = graft.Dep[ports.DevServer](ctx); err != nil {
		return nil, err
	}
	if ad.Watcher, err = graft.Dep[ports.Watcher](ctx); err != nil {
		return nil, err
	}

	return New(ad), nil
}

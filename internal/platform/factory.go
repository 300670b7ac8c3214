package platform

import (
	"context"

	"github.com/aretw0/notebook/pkg/core"
)

// New opens the repository and wraps it in a Service.
//
//	svc, err := notebook.New("./notebook.db3", notebook.WithLogger(logger))
//
// The URI argument is adapter-specific (a file path for 'sqlite').
func New(ctx context.Context, uri string, opts ...Option) (*core.Service, error) {
	repo, err := Init(ctx, uri, opts...)
	if err != nil {
		return nil, err
	}

	// We also need to parse options here to get the logger for wiring
	o := apply(opts)

	return core.NewService(repo, o.logger), nil
}

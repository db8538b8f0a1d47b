package main

import (
	"context"

	hubmd "github.com/alnah/go-hubmd"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input hubmd.Input) (*hubmd.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*hubmd.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts hubmd.ConverterPool to Pool.
type converterPool struct {
	pool *hubmd.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a lazily filled pool of size converters.
func newConverterPool(size int, opts ...hubmd.Option) Pool {
	return &converterPool{pool: hubmd.NewConverterPool(size, opts...)}
}

// Acquire returns a nil interface on error, never a typed nil.
func (p *converterPool) Acquire(ctx context.Context) (CLIConverter, error) {
	conv, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*hubmd.Converter); ok {
		p.pool.Release(conv)
	}
}

func (p *converterPool) Size() int    { return p.pool.Size() }
func (p *converterPool) Close() error { return p.pool.Close() }

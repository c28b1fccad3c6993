package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, model string, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

// MockClosingGenerator also records Close calls.
type MockClosingGenerator struct {
	MockGenerator
}

func (m *MockClosingGenerator) Close() error {
	args := m.Called()
	return args.Error(0)
}

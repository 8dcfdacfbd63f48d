package main

import (
	"github.com/phrazzld/listing-studio/internal/acquire"
	"github.com/phrazzld/listing-studio/internal/config"
	"github.com/phrazzld/listing-studio/internal/domain"
)

func newTestLoader() *acquire.Loader {
	return acquire.NewLoader(config.AcquireConfig{
		MaxBytes:          1 << 20,
		AcceptedMIMETypes: domain.AcceptedMIMETypes,
	})
}

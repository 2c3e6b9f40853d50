package handlers

import (
	"time"

	"media-catalog/internal/catalog"
	"media-catalog/internal/scanner"
)

type Handlers struct {
	catalog   *catalog.Catalog
	scanner   *scanner.Scanner
	startTime time.Time
}

func New(cat *catalog.Catalog, scan *scanner.Scanner) *Handlers {
	return &Handlers{
		catalog:   cat,
		scanner:   scan,
		startTime: time.Now(),
	}
}

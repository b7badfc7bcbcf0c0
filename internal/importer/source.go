package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

type Source string

const (
	SourceStrava   Source = "strava"
	SourceConcept2 Source = "concept2"
	SourceFit      Source = "fit"
)

func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(s)) {
	case SourceStrava:
		return SourceStrava, nil
	case SourceConcept2:
		return SourceConcept2, nil
	case SourceFit:
		return SourceFit, nil
	default:
		return "", fmt.Errorf("unknown import source: %s", s)
	}
}

// Import dispatches to the importer of the given source.
func Import(source Source, r io.Reader, loc *time.Location) ([]Row, error) {
	switch source {
	case SourceStrava:
		return FromStrava(r)
	case SourceConcept2:
		return FromConcept2(r)
	case SourceFit:
		return FromFit(r, loc)
	default:
		return nil, fmt.Errorf("unknown import source: %s", source)
	}
}

package services

import (
	"delivery-hub-service/internal/domain"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var datasetNamespace = uuid.MustParse("3f1c6a2e-8d4b-5e7a-9c10-6b2d4f8e1a37")

// Fingerprint identifies a place set by content and order.
func Fingerprint(places domain.PlaceSet) string {
	var b strings.Builder
	for _, p := range places {
		fmt.Fprintf(&b, "%s|%s|%d|%s|%s\n",
			p.Name,
			p.Type,
			p.Population,
			strconv.FormatFloat(p.Lat, 'g', -1, 64),
			strconv.FormatFloat(p.Lon, 'g', -1, 64),
		)
	}
	return uuid.NewSHA1(datasetNamespace, []byte(b.String())).String()
}

// ResultKey names the cached results of a seeded run over places.
// Results only repeat for the same options, so those are part of the key.
func ResultKey(places domain.PlaceSet, seed uint64, strategies []Strategy, opts Options) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = string(s)
	}
	return fmt.Sprintf("hubopt:results:%s:%d:%s:%g/%g/%g/%g/%d",
		Fingerprint(places),
		seed,
		strings.Join(names, ","),
		opts.Step, opts.SecondHubStep, opts.SecondHubPadLat, opts.SecondHubPadLon, opts.MaxIterations,
	)
}

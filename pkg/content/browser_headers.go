package content

import (
	"math/rand"
	"net/http"
)

// acceptLanguages are Accept-Language values of browsers set up for Brazilian readers
var acceptLanguages = []string{
	"pt-BR,pt;q=0.9",
	"pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7",
	"pt-BR,pt;q=0.9,en;q=0.8",
	"pt-BR,pt;q=0.8,es;q=0.6,en;q=0.5",
	"pt,pt-BR;q=0.9,en;q=0.8",
}

// addBrowserHeaders sets the headers a browser sends for a top level navigation,
// some news sites refuse requests without them
func addBrowserHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]) //nolint:gosec // header variation only
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
}

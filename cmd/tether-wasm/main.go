//go:build js && wasm

// Command tether-wasm mounts the showcase demos into the browser page that
// loads it. The page must contain the elements listed in showcase.Page.
package main

import (
	"github.com/go-drift/tether/internal/showcase"
	"github.com/go-drift/tether/pkg/errors"
	"github.com/go-drift/tether/pkg/host/wasmdom"
	"github.com/go-drift/tether/pkg/logging"
	"github.com/go-drift/tether/pkg/proxy"
	"github.com/go-drift/tether/pkg/vdom"
)

func main() {
	logger := logging.Default()
	if _, err := showcase.Mount(wasmdom.New(), proxy.Default, vdom.WithLogger(logger)); err != nil {
		errors.Report(&errors.HostError{Op: "tether-wasm.Mount", Kind: errors.KindRender, Err: err})
		return
	}
	logger.Info("showcase mounted", "proxies", proxy.Default.Len())

	// Returning would end the program and invalidate every js.Func.
	select {}
}

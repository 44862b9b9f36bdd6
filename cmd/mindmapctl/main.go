// Command mindmapctl works on stored mind map payloads offline: keyword
// extraction, radial layout and image export, using the same domain services
// as the API.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

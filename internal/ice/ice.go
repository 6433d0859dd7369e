// Package ice builds the client-facing ICE server list. The relay never
// opens a PeerConnection itself; it only tells browsers which STUN/TURN
// servers to use so they do not hardcode any.
package ice

import (
	"strings"

	"github.com/pion/webrtc/v4"
)

// Servers converts configured URLs into the webrtc.ICEServer values a
// browser expects in RTCPeerConnection configuration. Blank entries are
// skipped.
func Servers(urls []string) []webrtc.ICEServer {
	out := make([]webrtc.ICEServer, 0, len(urls))
	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		out = append(out, webrtc.ICEServer{URLs: []string{url}})
	}
	return out
}

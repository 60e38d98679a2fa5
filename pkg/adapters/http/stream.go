package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aretw0/tictactoe/pkg/domain"
)

// StreamGame handles GET /games/{id}/stream (SSE).
// The first message (event: snapshot) carries the full snapshot, every later
// message a domain.SnapshotDiff. ?watch=state,board,players drops diffs that
// touch none of the listed parts.
func (s *Server) StreamGame(w http.ResponseWriter, r *http.Request, id string, params StreamGameParams) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("StreamGame: Streaming not supported")
		return
	}

	snaps, err := s.Sessions.Subscribe(r.Context(), id)
	if err != nil {
		s.fail(w, "StreamGame", err)
		return
	}

	var watchList []string
	if params.Watch != nil && *params.Watch != "" {
		watchList = strings.Split(*params.Watch, ",")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.Logger.Info("SSE: Subscribing to Session Updates", "session_id", id)

	var last *domain.Snapshot
	for {
		select {
		case <-r.Context().Done():
			s.Logger.Info("SSE Client Disconnected", "session_id", id)
			return
		case snap, ok := <-snaps:
			if !ok {
				fmt.Fprintf(w, "event: closed\ndata: %s\n\n", id)
				flusher.Flush()
				return
			}

			if last == nil {
				data, _ := json.Marshal(snap)
				fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
				flusher.Flush()
				last = &snap
				continue
			}

			diff := domain.Diff(last, &snap)
			last = &snap
			if diff == nil || !watched(diff, watchList) {
				continue
			}
			data, err := json.Marshal(diff)
			if err != nil {
				s.Logger.Error("SSE: diff encode failed", "err", err)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func watched(diff *domain.SnapshotDiff, watchList []string) bool {
	if len(watchList) == 0 {
		return true
	}
	for _, field := range watchList {
		switch strings.TrimSpace(field) {
		case "state":
			if diff.StateName != nil || diff.Terminal != nil {
				return true
			}
		case "board":
			if len(diff.Cells) > 0 {
				return true
			}
		case "players":
			if diff.Human != nil || diff.Active != nil {
				return true
			}
		}
	}
	return false
}

package api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/openclaw/badge/render"
)

// base64Envelope wraps a PNG for clients that want JSON instead of
// binary bytes.
type base64Envelope struct {
	Success  bool   `json:"success"`
	Format   string `json:"format"`
	Data     string `json:"data"`
	DataURI  string `json:"dataUri"`
	MimeType string `json:"mimeType"`
}

// handleBadge generates a badge PNG. The only hard requirement is a
// non-empty name; malformed dpi, rotation, caps, and format values all
// normalize to safe defaults rather than erroring.
func (s *Server) handleBadge(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}

	req := render.Request{
		Name:     name,
		DPI:      queryInt(r, s.DefaultDPI, "dpi"),
		WidthMM:  render.BadgeWidthMM,
		HeightMM: render.BadgeHeightMM,
		Rotation: queryInt(r, 0, "rotation", "rotate"),
		MaxLine1: queryInt(r, 15, "maxLine1", "max_line1", "maxline1"),
		MaxLine2: queryInt(r, 15, "maxLine2", "max_line2", "maxline2"),
	}

	if qr := strings.TrimSpace(r.URL.Query().Get("qr")); qr != "" {
		if s.Store == nil {
			// Store-less variant: qr is the raw payload.
			req.QRPayload = qr
		} else {
			p, err := s.Store.Resolve(qr)
			if err != nil {
				s.Log.Error("participant lookup failed", "id", qr, "error", err)
				writeError(w, http.StatusInternalServerError, "participant lookup failed")
				return
			}
			if p != nil {
				req.QRPayload = qr
				req.Category = p.Category
				if strings.TrimSpace(p.Name) != "" {
					req.Name = p.Name
				}
			}
			// Unknown identifier: render without a QR rather than
			// printing a code nothing can resolve.
		}
	}

	pngBytes, err := s.Renderer.Render(req)
	if err != nil {
		s.Log.Error("badge render failed", "name", req.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "badge rendering failed")
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "base64") {
		encoded := base64.StdEncoding.EncodeToString(pngBytes)
		writeJSON(w, http.StatusOK, base64Envelope{
			Success:  true,
			Format:   "base64",
			Data:     encoded,
			DataURI:  "data:image/png;base64," + encoded,
			MimeType: "image/png",
		})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="badge.png"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pngBytes)
}

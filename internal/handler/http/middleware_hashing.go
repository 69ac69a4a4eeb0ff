package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-mission-sync/internal/logger"
	"github.com/MKhiriev/go-mission-sync/internal/utils"
)

// maxSignedBody bounds the body read for signature verification.
const maxSignedBody = 64 << 20

// verifySignature rejects requests whose HashSHA256 header does not match
// the raw body. It is a pass-through when no hash key is configured.
func (h *Handler) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(io.LimitReader(r.Body, maxSignedBody))
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifySignature").Msg("failed to read request body")
			http.Error(w, "failed to read request body", http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		signature := r.Header.Get(utils.HashHeader)
		if signature == "" {
			log.Warn().Str("func", "*Handler.verifySignature").Msg("unsigned request rejected")
			http.Error(w, ErrMissingSignature.Error(), http.StatusBadRequest)
			return
		}
		if !h.signer.Verify(body, signature) {
			log.Warn().Str("func", "*Handler.verifySignature").
				Str("hash from request", signature).
				Msg("hashes are not equal")
			http.Error(w, ErrSignatureMismatch.Error(), http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// signResponse adds HashSHA256 over the response body so agents can check
// that the snapshot they merge came from a hub sharing their key.
func (h *Handler) signResponse(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		bw := newBufferedWriter()
		next.ServeHTTP(bw, r)

		bw.Header().Set(utils.HashHeader, h.signer.Sign(bw.body.Bytes()))
		if err := bw.flush(w); err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.signResponse").Msg("failed to write response")
		}
	})
}

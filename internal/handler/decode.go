package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/base48/vietqr-portal/internal/qrpay"
	"github.com/base48/vietqr-portal/internal/vietqr"
)

type decodeResponse struct {
	vietqr.Info
	Bank          *vietqr.Bank `json:"bank,omitempty"`
	AmountDisplay string       `json:"amount_display,omitempty"`
}

type parseRequest struct {
	Payload string `json:"payload" validate:"required,max=512"`
}

func newDecodeResponse(info *vietqr.Info) decodeResponse {
	resp := decodeResponse{Info: *info}
	if b, ok := vietqr.LookupBank(info.BankBIN); ok {
		resp.Bank = &b
	}
	if info.Amount != "" {
		resp.AmountDisplay = vietqr.FormatVND(info.Amount)
	}
	return resp
}

// DecodeHandler reads an uploaded QR image and returns the transfer details
// POST /api/decode (multipart field "file"), ?strict=1 rejects bad checksums
func (h *Handler) DecodeHandler(w http.ResponseWriter, r *http.Request) {
	info, err := h.decodeUpload(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newDecodeResponse(info))
}

// ParseHandler extracts the transfer details from a raw payload string
// POST /api/parse
func (h *Handler) ParseHandler(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	info, err := h.qr.Parse(req.Payload, strictParam(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, newDecodeResponse(info))
}

// DecodeFormHandler reads an uploaded QR image and fills the generator form
// with its details
// POST /decode
func (h *Handler) DecodeFormHandler(w http.ResponseWriter, r *http.Request) {
	data := h.newPage()

	info, err := h.decodeUpload(w, r)
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("failed to decode upload", "error", err)
		}
		data.Error = msg
		h.render(w, status, "home.html", data)
		return
	}

	data.Decoded = info
	data.Form = generateRequest{
		Account: info.Account,
		BankBIN: info.BankBIN,
		Note:    info.Note,
		Amount:  info.Amount,
	}
	h.render(w, http.StatusOK, "home.html", data)
}

var errMissingFile = errors.New("missing file")

func (h *Handler) decodeUpload(w http.ResponseWriter, r *http.Request) (*vietqr.Info, error) {
	// Leave room for the multipart envelope around the image
	r.Body = http.MaxBytesReader(w, r.Body, qrpay.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(qrpay.MaxImageBytes); err != nil {
		return nil, errUpload{err}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, errUpload{errMissingFile}
	}
	defer file.Close()

	if header.Size > qrpay.MaxImageBytes {
		return nil, &http.MaxBytesError{Limit: qrpay.MaxImageBytes}
	}

	h.log.Debug("decoding upload", "filename", header.Filename, "size", header.Size)
	return h.qr.Decode(r.Context(), file, strictParam(r))
}

// errUpload marks a malformed or oversized multipart request.
type errUpload struct{ err error }

func (e errUpload) Error() string { return "bad upload: " + e.err.Error() }
func (e errUpload) Unwrap() error { return e.err }

func strictParam(r *http.Request) bool {
	strict, _ := strconv.ParseBool(r.URL.Query().Get("strict"))
	return strict
}

package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/base48/vietqr-portal/internal/config"
	"github.com/base48/vietqr-portal/internal/qrpay"
	"github.com/base48/vietqr-portal/internal/vietqr"
)

// generateRequest is the body of POST /api/qr and the fields of the
// generate form.
type generateRequest struct {
	Account  string `json:"account" validate:"required,max=55"`
	BankBIN  string `json:"bank_bin" validate:"omitempty,len=6,numeric"`
	BankCode string `json:"bank_code" validate:"omitempty,max=20"`
	Name     string `json:"name" validate:"max=100"`
	Note     string `json:"note" validate:"max=200"`
	Amount   string `json:"amount" validate:"max=32"`
}

func (req generateRequest) params() qrpay.GenerateParams {
	bank := req.BankBIN
	if bank == "" {
		bank = req.BankCode
	}
	return qrpay.GenerateParams{
		Account: req.Account,
		Bank:    bank,
		Name:    req.Name,
		Note:    req.Note,
		Amount:  req.Amount,
	}
}

type qrResponse struct {
	Payload       string            `json:"payload"`
	Info          vietqr.Info       `json:"info"`
	AmountDisplay string            `json:"amount_display,omitempty"`
	Bank          *vietqr.Bank      `json:"bank,omitempty"`
	Images        map[string]string `json:"images"`
}

// pageData feeds home.html.
type pageData struct {
	Title   string
	Banks   []vietqr.Bank
	Form    generateRequest
	Result  *qrpay.Result
	Styles  []qrpay.Style
	Decoded *vietqr.Info
	Error   string
	// ImageURL reproduces Result as a single PNG.
	ImageURL string
}

// UnlistedBIN returns the selected BIN when the bank directory does not know
// it, so the form can still offer it.
func (d pageData) UnlistedBIN() string {
	bin := d.Form.BankBIN
	if bin == "" {
		return ""
	}
	if _, ok := vietqr.LookupBank(bin); ok {
		return ""
	}
	return bin
}

func (h *Handler) newPage() pageData {
	return pageData{
		Title:  "VietQR Generator",
		Banks:  vietqr.Banks(),
		Styles: qrpay.Styles,
		Form:   generateRequest{BankBIN: h.qr.DefaultBankBIN()},
	}
}

// imageURL links to the PNG endpoint with every field that went into res.
func (h *Handler) imageURL(res *qrpay.Result) string {
	q := url.Values{}
	q.Set("account", res.Info.Account)
	q.Set("bank_bin", res.Info.BankBIN)
	if res.Info.Name != "" {
		q.Set("name", res.Info.Name)
	}
	if res.Info.Note != "" {
		q.Set("note", res.Info.Note)
	}
	if res.Info.Amount != "" {
		q.Set("amount", res.Info.Amount)
	}
	return h.config.QRImageURL() + "?" + q.Encode()
}

// HomeHandler displays the generator form
// GET /
func (h *Handler) HomeHandler(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home.html", h.newPage())
}

// GenerateFormHandler renders all presentations for the submitted form
// POST /generate
func (h *Handler) GenerateFormHandler(w http.ResponseWriter, r *http.Request) {
	data := h.newPage()

	if err := r.ParseForm(); err != nil {
		data.Error = "Invalid form data"
		h.render(w, http.StatusBadRequest, "home.html", data)
		return
	}

	data.Form = generateRequest{
		Account:  strings.TrimSpace(r.FormValue("account")),
		BankBIN:  strings.TrimSpace(r.FormValue("bank_bin")),
		BankCode: strings.TrimSpace(r.FormValue("bank_code")),
		Name:     strings.TrimSpace(r.FormValue("name")),
		Note:     strings.TrimSpace(r.FormValue("note")),
		Amount:   strings.TrimSpace(r.FormValue("amount")),
	}

	if err := h.validate.Struct(data.Form); err != nil {
		status, msg := errorStatus(err)
		data.Error = msg
		h.render(w, status, "home.html", data)
		return
	}

	res, err := h.qr.Generate(r.Context(), data.Form.params())
	if err != nil {
		status, msg := errorStatus(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("failed to generate QR", "error", err)
		}
		data.Error = msg
		h.render(w, status, "home.html", data)
		return
	}

	data.Result = res
	data.Form.BankBIN = res.Info.BankBIN
	data.ImageURL = h.imageURL(res)
	h.render(w, http.StatusOK, "home.html", data)
}

// BanksHandler lists the known banks
// GET /api/banks
func (h *Handler) BanksHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"default_bin": h.qr.DefaultBankBIN(),
		"banks":       vietqr.Banks(),
	})
}

// GenerateHandler builds a payload and returns every presentation as data URLs
// POST /api/qr
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	res, err := h.qr.Generate(r.Context(), req.params())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	images := make(map[string]string, len(res.Images))
	for style, img := range res.Images {
		images[string(style)] = qrpay.DataURL(img)
	}

	h.writeJSON(w, http.StatusOK, qrResponse{
		Payload:       res.Payload,
		Info:          res.Info,
		AmountDisplay: res.AmountDisplay,
		Bank:          res.Bank,
		Images:        images,
	})
}

// QRImageHandler renders a single presentation as PNG
// GET /api/qr.png?account=&bank_bin=|bank_code=&name=&note=&amount=&style=&size=
func (h *Handler) QRImageHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := generateRequest{
		Account:  strings.TrimSpace(q.Get("account")),
		BankBIN:  strings.TrimSpace(q.Get("bank_bin")),
		BankCode: strings.TrimSpace(q.Get("bank_code")),
		Name:     strings.TrimSpace(q.Get("name")),
		Note:     q.Get("note"),
		Amount:   q.Get("amount"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, err)
		return
	}

	style, err := qrpay.ParseStyle(q.Get("style"))
	if err != nil {
		h.jsonError(w, "Style must be logo, captioned or poster", http.StatusBadRequest)
		return
	}

	params := req.params()
	if raw := q.Get("size"); raw != "" {
		size, err := cast.ToIntE(raw)
		if err != nil || size < config.MinQRSize || size > config.MaxQRSize {
			h.jsonError(w, "Size must be a number between "+strconv.Itoa(config.MinQRSize)+
				" and "+strconv.Itoa(config.MaxQRSize), http.StatusBadRequest)
			return
		}
		params.Size = size
	}

	res, err := h.qr.Render(r.Context(), params, style)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("X-VietQR-Payload", res.Payload)
	w.Write(res.Images[style])
}

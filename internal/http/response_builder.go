package http

import (
	"encoding/json"
	"net/http"

	"painel/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// recordView is the wire shape of one record: dates and amounts as the
// dashboard displays them, zero-valued optionals omitted.
type recordView struct {
	Date         string `json:"date,omitempty"`
	Person       string `json:"person"`
	Operation    string `json:"operation,omitempty"`
	PaymentType  string `json:"payment_type,omitempty"`
	Group        string `json:"group,omitempty"`
	Type         string `json:"type,omitempty"`
	OrderNumber  string `json:"order_number,omitempty"`
	Description  string `json:"description,omitempty"`
	Amount       string `json:"amount"`
	Labor        string `json:"labor,omitempty"`
	Parts        string `json:"parts,omitempty"`
	Other        string `json:"other,omitempty"`
	TotalWithFee string `json:"total_with_fee,omitempty"`
	Source       string `json:"source"`
}

func newRecordView(r core.Record) recordView {
	v := recordView{
		Person:      r.Person,
		Operation:   r.Operation,
		PaymentType: r.PaymentType,
		Group:       r.Group,
		Type:        r.Type,
		OrderNumber: r.OrderNumber,
		Description: r.Description,
		Amount:      r.Amount.Display(),
		Source:      string(r.Source),
	}
	if !r.Date.IsZero() {
		v.Date = r.Date.Display()
	}
	if r.Labor.Cents != 0 {
		v.Labor = r.Labor.Display()
	}
	if r.Parts.Cents != 0 {
		v.Parts = r.Parts.Display()
	}
	if r.Other.Cents != 0 {
		v.Other = r.Other.Display()
	}
	if r.TotalWithFee.Cents != 0 {
		v.TotalWithFee = r.TotalWithFee.Display()
	}
	return v
}

func newRecordViews(records []core.Record) []recordView {
	out := make([]recordView, len(records))
	for i, r := range records {
		out[i] = newRecordView(r)
	}
	return out
}

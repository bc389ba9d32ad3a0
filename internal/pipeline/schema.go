package pipeline

import "painel/internal/core"

// AmountRule decides which primary amounts survive cleaning. The expense
// ledger requires strictly positive values while the receipts sheets only
// require a numeric value; the asymmetry is deliberate and preserved per
// source.
type AmountRule int

const (
	// AmountPresent keeps any row whose amount parses to a number.
	AmountPresent AmountRule = iota
	// AmountPositive additionally drops zero and negative amounts.
	AmountPositive
)

// Schema is the per-source configuration: where the data lives in the
// workbook, how its headers map onto canonical columns, and which cleaning
// rules apply. Header synonyms are configuration data, not logic; adding a
// new source format means adding a Schema, not touching the cleaner.
type Schema struct {
	Name       string
	Source     core.Source
	FileKey    string // key of the file in the fetch configuration
	SheetName  string
	HeaderSkip int // leading rows before the header row

	// HeaderMap maps normalized source headers (uppercased, whitespace
	// collapsed) to canonical columns. Headers with no entry are dropped.
	HeaderMap map[string]string

	// Keep lists the canonical columns expected from this source, in
	// output order. Mapped columns outside this list are dropped too.
	Keep []string

	// Relevant is the set of fields checked when dropping empty rows: a
	// row survives only if at least one relevant field is non-absent.
	Relevant []string

	AmountRule AmountRule
}

// receiptHeaderMap covers the header variants seen across the receipts and
// service-order sheets (they share a layout that drifted over the years).
func receiptHeaderMap() map[string]string {
	return map[string]string{
		"DATA":       ColDate,
		"TÉCNICO":    ColPerson,
		"TECNICO":    ColPerson,
		"N° OS":      ColOrderNumber,
		"Nº OS":      ColOrderNumber,
		"N OS":       ColOrderNumber,
		"OPERAÇÃO":   ColOperation,
		"OPERACAO":   ColOperation,
		"TIPO PAG.":  ColPaymentType,
		"TIPO PAG":   ColPaymentType,
		"PEÇAS":      ColParts,
		"PECAS":      ColParts,
		"M.O":        ColLabor,
		"M.O.":       ColLabor,
		"VALOR R$":   ColAmount,
		"OBSERVAÇÃO": ColDescription,
		"OBSERVACAO": ColDescription,
		"OUTROS":     ColOther,
		"TOTAL C/TX": ColTotalWithFee,
	}
}

// Receipts returns the schema of the cash receipts sheet.
func Receipts() Schema {
	return Schema{
		Name:       "receipts",
		Source:     core.SourceReceipts,
		FileKey:    "receipts",
		SheetName:  "ENTRADAS",
		HeaderSkip: 4,
		HeaderMap:  receiptHeaderMap(),
		Keep: []string{
			ColDate, ColPerson, ColOrderNumber, ColOperation,
			ColPaymentType, ColParts, ColLabor, ColAmount, ColDescription,
		},
		Relevant: []string{
			ColDate, ColPerson, ColOrderNumber, ColOperation,
			ColPaymentType, ColParts, ColLabor, ColAmount, ColDescription,
		},
		AmountRule: AmountPresent,
	}
}

// ServiceOrders returns the schema of the service-order ledger sheet.
func ServiceOrders() Schema {
	return Schema{
		Name:       "service_orders",
		Source:     core.SourceServiceOrders,
		FileKey:    "service_orders",
		SheetName:  "Prestação",
		HeaderSkip: 5,
		HeaderMap:  receiptHeaderMap(),
		Keep: []string{
			ColDate, ColPerson, ColOrderNumber, ColOperation,
			ColPaymentType, ColParts, ColLabor, ColOther, ColAmount,
			ColTotalWithFee,
		},
		Relevant: []string{
			ColDate, ColPerson, ColOrderNumber, ColOperation,
			ColPaymentType, ColParts, ColLabor, ColOther, ColAmount,
			ColTotalWithFee,
		},
		AmountRule: AmountPresent,
	}
}

// Expenses returns the schema of the expense ledger sheet.
func Expenses() Schema {
	return Schema{
		Name:       "expenses",
		Source:     core.SourceExpenses,
		FileKey:    "expenses",
		SheetName:  "DESPESAS",
		HeaderSkip: 0,
		HeaderMap: map[string]string{
			"DATA":              ColDate,
			"GRUPO DESPESAS":    ColGroup,
			"TIPO DESPESAS":     ColType,
			"USUÁRIO":           ColPerson,
			"USUARIO":           ColPerson,
			"DESCRIÇÃO DESPESA": ColDescription,
			"DESCRICAO DESPESA": ColDescription,
			"VALOR R$":          ColAmount,
		},
		Keep: []string{
			ColDate, ColGroup, ColType, ColPerson, ColDescription, ColAmount,
		},
		Relevant: []string{
			ColDate, ColGroup, ColType, ColPerson, ColDescription, ColAmount,
		},
		AmountRule: AmountPositive,
	}
}

// textColumns are the free-text canonical columns that receive the
// NotInformed sentinel when absent.
var textColumns = map[string]bool{
	ColPerson:      true,
	ColOperation:   true,
	ColPaymentType: true,
	ColDescription: true,
	ColGroup:       true,
	ColType:        true,
	ColOrderNumber: true,
}

// numericColumns are the optional decimal columns coerced to 0 when absent.
var numericColumns = map[string]bool{
	ColParts:        true,
	ColLabor:        true,
	ColOther:        true,
	ColTotalWithFee: true,
}

package domain

// NotAvailable - значение для отсутствующих полей и неразрешённых районов
const NotAvailable = "N/A"

// LookupOutcome различает найденный район, пустой ответ и сбой запроса
type LookupOutcome string

const (
	OutcomeFound  LookupOutcome = "found"
	OutcomeEmpty  LookupOutcome = "empty"
	OutcomeFailed LookupOutcome = "failed"
)

type NeighbourhoodEntry struct {
	Name    string        `json:"name"`
	Outcome LookupOutcome `json:"outcome"`
}

package survey

import "errors"

var (
	// ErrNoData means the file produced no rows.
	ErrNoData = errors.New("El archivo no contiene datos para analizar")

	// ErrNoQuestionColumn means the first row has none of the known survey columns.
	ErrNoQuestionColumn = errors.New("El archivo debe contener las columnas 'Motivo Pregunta 1', 'encuesta de salida' o 'Encuesta de salida 4FRH-209'")
)

// Precheck performs the upload-time checks that run before analysis: the
// sheet must have rows, and its first row must carry a known survey column.
// Extra recognizer patterns do not satisfy the column check.
func Precheck(sheet *Sheet) error {
	if sheet == nil || len(sheet.Rows) == 0 {
		return ErrNoData
	}
	first := sheet.Rows[0]
	for _, c := range KnownColumns() {
		if first.Has(c.String()) {
			return nil
		}
	}
	return ErrNoQuestionColumn
}

package ingest

import (
	"encoding/csv"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gaigek/mrp-system/internal/domain/entity"
	"github.com/gaigek/mrp-system/pkg/logger"
)

// Offsets posicionales del export plano del MRP/ERP. Los campos 5/6/7 son
// fijos sin importar cuántas columnas extra traiga la fila.
const (
	fieldType     = 0
	fieldItemCode = 1
	fieldDueDate  = 2
	fieldPart     = 3
	fieldQuantity = 4
	fieldVendor   = 5
	fieldPONumber = 6
	fieldCategory = 7

	minFields = 5
)

var (
	dateSlashFormat = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	dateDashFormat  = regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`)
)

// ParseResult resultado del fold sobre las filas del snapshot.
type ParseResult struct {
	Items []*entity.StockItem
	// Saltos blandos, observables pero nunca fatales.
	RowsSkipped   int
	DateCoercions int
}

// Parser convierte las filas crudas delimitadas en artículos con sus libros
// mayores tipados. Tolerante a fechas y cantidades malformadas (una fila
// ilegible se salta); solo un CSV estructuralmente roto devuelve error.
type Parser struct {
	log   *logger.Logger
	today time.Time
}

// NewParser construye el parser. today es la fecha de procesamiento usada
// como fallback para fechas inválidas ("sin fecha = hoy", política
// deliberada, no un error).
func NewParser(log *logger.Logger, today time.Time) *Parser {
	return &Parser{log: log, today: todayMidnight(today)}
}

func todayMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Parse procesa el contenido completo del snapshot. Fold explícito: el
// acumulador lleva los artículos ya sembrados y el artículo "actual" (el
// último registro tipo 0 visto); las filas no-semilla se adjuntan a ese
// contexto. Filas de tipo distinto de 0 antes de cualquier semilla se
// descartan en silencio (no hay artículo al cual adjuntarlas).
func (p *Parser) Parse(raw string) (*ParseResult, error) {
	reader := csv.NewReader(strings.NewReader(raw))
	// Filas con distinto número de campos son normales en el export; un
	// entrecomillado roto no lo es y aborta el archivo completo.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	var current *entity.StockItem

	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		if len(row) < minFields {
			p.skip(result, i, "fila con menos de 5 campos")
			continue
		}

		txType, err := strconv.Atoi(strings.TrimSpace(row[fieldType]))
		if err != nil {
			p.skip(result, i, "tipo de transacción no numérico")
			continue
		}
		// Los registros de balance mínimo no tienen significado en el libro
		// mayor; se descartan al importar.
		if entity.TransactionType(txType) == entity.TypeMinBalance {
			continue
		}

		dueDate, coerced := p.parseDate(row[fieldDueDate])
		if coerced {
			result.DateCoercions++
		}

		vendor, poNumber, category := optionalFields(row)

		if entity.TransactionType(txType) == entity.TypeBeginningBalance {
			// Semilla: conserva el signo (balance inicial negativo permitido).
			balance, err := ceilingRound(row[fieldQuantity])
			if err != nil {
				p.skip(result, i, "balance inicial no numérico")
				continue
			}
			current = entity.NewStockItem(row[fieldItemCode], balance, vendor, category)
			result.Items = append(result.Items, current)
			continue
		}

		if current == nil {
			p.skip(result, i, "fila sin artículo semilla previo")
			continue
		}

		quantity, err := ceilingRound(stripQuantityNoise(row[fieldQuantity]))
		if err != nil {
			p.skip(result, i, "cantidad no numérica")
			continue
		}

		partNumber := row[fieldPart]
		if entity.TransactionType(txType) == entity.TypeOpenPO {
			// Para POs abiertos la referencia es el número de la orden de
			// compra, no el número de parte.
			partNumber = poNumber
		}

		current.AttachTransaction(&entity.TransactionRecord{
			Type:              entity.TransactionType(txType),
			DueDate:           dueDate,
			Quantity:          quantity,
			PartNumber:        partNumber,
			AvailableQuantity: quantity,
		})
	}

	return result, nil
}

func (p *Parser) skip(result *ParseResult, row int, reason string) {
	result.RowsSkipped++
	if p.log != nil {
		p.log.Debug().Int("fila", row).Str("motivo", reason).Msg("fila descartada")
	}
}

func isEmptyRow(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func optionalFields(row []string) (vendor, poNumber, category string) {
	if len(row) > fieldVendor {
		vendor = row[fieldVendor]
	}
	if len(row) > fieldPONumber {
		poNumber = row[fieldPONumber]
	}
	if len(row) > fieldCategory {
		category = row[fieldCategory]
	}
	return vendor, poNumber, category
}

// parseDate valida y normaliza la fecha de vencimiento. Acepta M/D/Y (mes y
// día de 1-2 dígitos, año de 2-4) y Y-M-D. Los centinelas de "sin fecha"
// (patrones todo-cero, cualquier substring 00/00), los formatos no
// reconocidos y las fechas de calendario inválidas caen a la fecha de
// procesamiento. Devuelve coerced=true cuando aplicó el fallback.
func (p *Parser) parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Contains(s, "00/00") {
		return p.today, true
	}

	switch {
	case dateSlashFormat.MatchString(s):
		parts := strings.Split(s, "/")
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		year, _ := strconv.Atoi(parts[2])
		if year < 100 {
			year += 2000
		}
		if d, ok := calendarDate(year, month, day); ok {
			return d, false
		}
	case dateDashFormat.MatchString(s):
		parts := strings.Split(s, "-")
		year, _ := strconv.Atoi(parts[0])
		month, _ := strconv.Atoi(parts[1])
		day, _ := strconv.Atoi(parts[2])
		if d, ok := calendarDate(year, month, day); ok {
			return d, false
		}
	}
	return p.today, true
}

// calendarDate construye la fecha solo si es un día de calendario real
// (time.Date normaliza desbordes como 2/30, aquí se rechazan).
func calendarDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	y2, m2, d2 := d.Date()
	if y2 != year || int(m2) != month || d2 != day {
		return time.Time{}, false
	}
	return d, true
}

// stripQuantityNoise elimina el ruido del export: signo negativo inicial y
// comillas. Aplicable a todos los tipos salvo el balance inicial, que
// conserva el signo.
func stripQuantityNoise(s string) string {
	s = strings.ReplaceAll(s, `"`, "")
	s = strings.TrimSpace(s)
	return strings.TrimPrefix(s, "-")
}

// ceilingRound parsea un decimal y redondea SIEMPRE hacia arriba al entero
// más cercano (nunca al más próximo ni hacia abajo: protege contra pedir de
// menos por unidades fraccionales). Idempotente sobre enteros.
func ceilingRound(s string) (int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return int(d.Ceil().IntPart()), nil
}

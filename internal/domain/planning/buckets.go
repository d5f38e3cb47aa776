package planning

import "time"

// GroupBy modo de agrupación temporal de órdenes y recomendaciones.
type GroupBy string

const (
	GroupByWeek  GroupBy = "week"
	GroupByMonth GroupBy = "month"
)

// ParseGroupBy normaliza el modo de agrupación; cualquier valor no
// reconocido cae al default semanal.
func ParseGroupBy(s string) GroupBy {
	if GroupBy(s) == GroupByMonth {
		return GroupByMonth
	}
	return GroupByWeek
}

// Truncate normaliza una fecha a medianoche conservando la zona.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart devuelve el lunes de la semana de la fecha dada (el domingo
// pertenece a la semana que terminó, no a la que empieza).
func WeekStart(t time.Time) time.Time {
	t = Truncate(t)
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

// MonthStart devuelve el primer día del mes de la fecha dada.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// BucketStart devuelve el inicio del bucket (semana o mes) para la fecha.
func BucketStart(t time.Time, groupBy GroupBy) time.Time {
	if groupBy == GroupByMonth {
		return MonthStart(t)
	}
	return WeekStart(t)
}

// BucketKey clave estable del bucket, formato fecha ISO del inicio.
func BucketKey(t time.Time, groupBy GroupBy) string {
	return BucketStart(t, groupBy).Format("2006-01-02")
}

// NeedByDate fecha "needs to be in by": inicio del bucket menos el lead time
// configurado en semanas.
func NeedByDate(bucketStart time.Time, leadTimeWeeks int) time.Time {
	return bucketStart.AddDate(0, 0, -leadTimeWeeks*7)
}

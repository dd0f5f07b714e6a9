package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/eggmonitor/internal/analytics"
	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

const contextDateLayout = "02/01/2006"

// BuildContext summarizes the filtered dataset for the assistant.
func BuildContext(records []models.Record, criteria models.FilterCriteria) string {
	averages := analytics.GlobalAverages(records, models.Metrics)
	parts := make([]string, 0, len(models.Metrics))
	for _, metric := range models.Metrics {
		info := metric.Info()
		parts = append(parts, fmt.Sprintf("%s: %s %s", info.Name, averages[metric], info.Unit))
	}

	var b strings.Builder
	b.WriteString("Contexto de Datos Actual:\n")
	fmt.Fprintf(&b, "Filtros Aplicados: Granja: %s, Caseta: %s, Edad: %s, Estirpe: %s. Rango de Fechas: %s a %s.\n",
		criteria.Value(models.AttrFarm),
		criteria.Value(models.AttrShed),
		criteria.Value(models.AttrAge),
		criteria.Value(models.AttrBreed),
		dateLabel(criteria.Start),
		dateLabel(criteria.End))
	fmt.Fprintf(&b, "Total de Piezas (Registros) en el contexto actual: %d.\n", len(records))
	fmt.Fprintf(&b, "Promedios Clave: %s.", strings.Join(parts, ", "))
	return b.String()
}

func dateLabel(t time.Time) string {
	if t.IsZero() {
		return "sin límite"
	}
	return t.Format(contextDateLayout)
}

// BuildPrompt wraps the data context and the user's question.
func BuildPrompt(dataContext, question string) string {
	return "Basándote en el siguiente contexto de datos, responde mi pregunta.\n\n" +
		"--- CONTEXTO DE DATOS ACTUAL ---\n" +
		dataContext + "\n" +
		"--- FIN CONTEXTO ---\n\n" +
		"Mi pregunta es: " + question
}

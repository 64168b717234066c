package generator

import (
	"strings"

	"fisionote/internal/domain"
	"fisionote/internal/port"
)

var specialtyFocus = map[domain.Specialty]string{
	domain.SpecialtyGeneral:         "fisioterapia general",
	domain.SpecialtyMusculoskeletal: "fisioterapia musculoesquelética y traumatológica",
	domain.SpecialtyNeurological:    "fisioterapia neurológica",
	domain.SpecialtyRespiratory:     "fisioterapia respiratoria",
	domain.SpecialtySports:          "fisioterapia deportiva",
	domain.SpecialtyGeriatric:       "fisioterapia geriátrica",
}

// BuildNotePrompt returns the drafting prompt for a physiotherapy SOAP note.
func BuildNotePrompt(input port.GenerateInput) string {
	focus, ok := specialtyFocus[input.Specialty]
	if !ok {
		focus = specialtyFocus[domain.SpecialtyGeneral]
	}
	locale := input.Locale
	if locale == "" {
		locale = "es"
	}

	var b strings.Builder
	b.WriteString(`Eres un asistente clínico especializado en ` + focus + `. A partir de la transcripción de la consulta, redacta una nota SOAP estructurada.

INSTRUCCIONES IMPORTANTES:
- Escribe el contenido en el idioma "` + locale + `".
- No inventes datos que no aparezcan en la transcripción. Deja vacío lo que no se mencione.
- Para cada prueba física indica sensibilidad y especificidad (valores entre 0 y 1) solo si son conocidas.
- Sugiere evaluaciones físicas adicionales relevantes para el caso.
- Escribe los nombres de los medicamentos tal como se mencionan.

Devuelve SOLO JSON válido, sin formato markdown, sin bloques de código y sin explicaciones.

El objeto debe seguir este esquema:
{
  "soap": {
    "subjetivo": "",
    "objetivo": "",
    "evaluacion": "",
    "plan": ""
  },
  "paciente": {
    "edad": null,
    "sexo": ""
  },
  "pruebas_fisicas": [
    {
      "nombre": "",
      "resultado": "",
      "sensibilidad": 0,
      "especificidad": 0,
      "justificacion": ""
    }
  ],
  "banderas_rojas": [
    {
      "descripcion": "",
      "urgencia": "",
      "justificacion": ""
    }
  ],
  "entidades": [
    {
      "texto": "",
      "tipo": ""
    }
  ],
  "evaluaciones_fisicas_sugeridas": [],
  "medicamentos": []
}

TRANSCRIPCIÓN:
`)
	b.WriteString(strings.TrimSpace(input.Transcript))
	b.WriteString("\n")
	return b.String()
}

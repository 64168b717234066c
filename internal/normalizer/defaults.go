package normalizer

// DefaultEvaluations is the physical examination battery substituted when the
// model suggests no evaluations.
var DefaultEvaluations = []string{
	"Rango de movimiento activo y pasivo",
	"Prueba de fuerza muscular manual",
	"Palpación de estructuras relevantes",
	"Evaluación postural",
	"Screening neurológico (dermatomas, miotomas y reflejos)",
}

// Source keys, English first, then the Spanish keys the prompt historically produced.
var (
	soapKeys       = []string{"soap", "nota_soap", "soap_note"}
	subjectiveKeys = []string{"subjective", "subjetivo"}
	objectiveKeys  = []string{"objective", "objetivo"}
	assessmentKeys = []string{"assessment", "evaluacion", "valoracion", "analisis"}
	planKeys       = []string{"plan", "plan_tratamiento", "plan_de_tratamiento", "treatment_plan"}

	patientKeys = []string{"patient", "paciente"}
	ageKeys     = []string{"age", "edad"}
	sexKeys     = []string{"sex", "sexo", "gender", "genero"}

	physicalTestKeys   = []string{"physical_tests", "pruebas_fisicas", "pruebas_fisicas_realizadas"}
	redFlagKeys        = []string{"red_flags", "banderas_rojas", "alertas"}
	entityKeys         = []string{"entities", "entidades", "entidades_clinicas"}
	evaluationKeys     = []string{"suggested_evaluations", "evaluaciones_fisicas_sugeridas", "evaluaciones_sugeridas", "suggested_physical_evaluations"}
	medicationKeys     = []string{"medications", "medicamentos", "medicacion", "farmacos"}
	medicationNameKeys = []string{"name", "nombre", "medicamento", "medication", "farmaco"}

	testNameKeys    = []string{"name", "test", "nombre", "prueba", "evaluation", "evaluacion", "title", "titulo"}
	resultKeys      = []string{"result", "resultado", "finding", "hallazgo"}
	sensitivityKeys = []string{"sensitivity", "sensibilidad"}
	specificityKeys = []string{"specificity", "especificidad"}
	rationaleKeys   = []string{"justificacion", "justification", "rationale", "razon", "reason"}

	redFlagTextKeys = []string{"description", "descripcion", "flag", "bandera", "name", "nombre", "signo", "sign"}
	severityKeys    = []string{"severity", "urgencia", "urgency", "gravedad"}

	entityTextKeys = []string{"text", "texto", "entity", "entidad", "name", "nombre", "value", "valor"}
	entityTypeKeys = []string{"type", "tipo", "category", "categoria", "label", "etiqueta"}
)

package testutil

import (
	"testing"
)

// SpanishWords is a small Spanish word list with distinctive orthography.
var SpanishWords = []string{
	"el", "la", "los", "las", "que", "de", "del", "y", "en", "un", "una",
	"gato", "perro", "negro", "casa", "llamar", "niño", "caballo", "muerto",
	"hombre", "noche", "señor", "usted", "bueno", "vamos", "aquí", "dónde",
	"está", "quiero", "agua", "tierra", "sangre", "mujer", "pueblo", "cielo",
	"viejo", "camino", "fuego", "caballero", "mañana", "gracias", "nada",
	"amigo", "muchacho", "hijo", "padre", "madre", "nosotros", "ellos",
	"tengo", "tiene", "vengan", "todos", "muy", "pero", "como", "porque",
	"rojo", "blanco", "grande", "pequeño", "hermano", "ciudad", "dios",
}

// EnglishWords is a small English word list with distinctive orthography.
var EnglishWords = []string{
	"the", "a", "an", "and", "of", "to", "in", "he", "she", "it", "they",
	"quick", "fox", "brown", "house", "night", "horse", "kill", "man",
	"there", "which", "thought", "through", "would", "could", "should",
	"kid", "rider", "riders", "judge", "blood", "desert", "sun", "wind",
	"with", "without", "what", "when", "where", "who", "whose", "this",
	"that", "these", "those", "said", "rode", "looked", "walked", "spoke",
	"nothing", "something", "anything", "everything", "fire", "light",
	"dark", "stood", "watched", "toward", "across", "over", "under", "out",
}

// WriteLexicon writes the built-in word lists into dir and returns their paths.
func WriteLexicon(t *testing.T, dir string) (spanishPath, englishPath string) {
	t.Helper()

	spanishPath = WriteLines(t, dir, "spanish_dictionary.txt", SpanishWords...)
	englishPath = WriteLines(t, dir, "english_dictionary.txt", EnglishWords...)
	return spanishPath, englishPath
}

// SampleDocument mixes English narration with Spanish dialogue lines.
const SampleDocument = `The kid rode out across the desert toward the fire.
Vamos, dijo el viejo. Aquí no hay nada.
He looked at the judge and said nothing.

¿Dónde está el caballo, muchacho?
The riders stood in the dark and watched the light.
Gracias, señor.
`

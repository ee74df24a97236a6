package rfm

import (
	"fmt"
	"strings"
)

// Nombre maximal d'exemples de valeurs fautives embarqués dans une erreur.
const maxExamples = 5

// SchemaError : colonnes requises absentes de la table d'entrée. Fatale.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("colonnes requises manquantes: %s", strings.Join(e.Missing, ", "))
}

// ValueParseError : valeurs non numériques dans la colonne value. Fatale,
// embarque jusqu'à 5 exemples pour le diagnostic.
type ValueParseError struct {
	Column   string
	Examples []string
}

func (e *ValueParseError) Error() string {
	return fmt.Sprintf("colonne %s: valeurs non numériques (exemples: %s)",
		e.Column, strings.Join(e.Examples, ", "))
}

// DateParseError : dates impossibles à interpréter ('YYYY-MM-DD' ou 'YYYYMMDD'
// attendu). Fatale, embarque jusqu'à 5 exemples.
type DateParseError struct {
	Column   string
	Examples []string
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("colonne %s: dates invalides, 'YYYY-MM-DD' ou 'YYYYMMDD' attendu (exemples: %s)",
		e.Column, strings.Join(e.Examples, ", "))
}

// UnsupportedTypeError : type de cellule sans règle de normalisation. Fatale.
type UnsupportedTypeError struct {
	Column string
	Type   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("colonne %s: type non géré %s", e.Column, e.Type)
}

// InvalidScoreError : triplet de scores hors de [1,5], fourni au classifieur
// en dehors du pipeline. Le pipeline lui-même n'en produit jamais.
type InvalidScoreError struct {
	R, F, M int
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("scores hors bande [1,5]: r=%d f=%d m=%d", e.R, e.F, e.M)
}

package models

import (
	"time"
)

/*
LOAD → table brute telle que fournie par un collaborateur d'ingestion (CSV, base).
*/

// Noms des trois colonnes requises par le pipeline.
const (
	ColUserID = "user_id"
	ColDate   = "date"
	ColValue  = "value"
)

// RawTable représente une table tabulaire avant normalisation. Les cellules
// sont dynamiques (string, entier, flottant, time.Time) ; nil vaut null.
type RawTable struct {
	Columns []string
	Rows    [][]any
}

// Transaction représente une ligne normalisée : une transaction par ligne.
type Transaction struct {
	UserID string
	Date   time.Time // date calendaire, minuit UTC, sans composante horaire
	Value  float64
}

/*
COMPUTE → enregistrements produits par le pipeline. Chaque étape retourne une
nouvelle table immuable, rien n'est modifié en place.
*/

// UserRFM contient les métriques agrégées d'un utilisateur.
type UserRFM struct {
	UserID    string
	Recency   int     // jours depuis la dernière transaction (0 si le jour de l'analyse)
	Frequency int     // nombre de transactions
	Monetary  float64 // somme des valeurs
}

// ScoredUser ajoute les scores de quintiles 1..5 et leurs dérivés.
type ScoredUser struct {
	UserRFM
	RScore    int
	FScore    int
	MScore    int
	RFMTotal  int    // r+f+m, entre 3 et 15
	RFMString string // concaténation R,F,M (ex: "455")
}

// SegmentedUser est la sortie terminale du pipeline.
type SegmentedUser struct {
	ScoredUser
	Segment string
}

// Thresholds regroupe les 4 seuils de quintiles (0.2/0.4/0.6/0.8) par métrique.
// Valeurs transitoires recalculées à chaque run, jamais persistées.
type Thresholds struct {
	Recency   [4]float64
	Frequency [4]float64
	Monetary  [4]float64
}

/*
CONFIG → paramètres globaux
*/

// Variant sélectionne la sémantique métier de la colonne value. Le calcul est
// strictement identique dans les deux cas, seul le vocabulaire change.
type Variant string

const (
	VariantMonetary   Variant = "monetary"   // RFM : montants dépensés
	VariantEngagement Variant = "engagement" // RFE : score d'engagement (ex: pages vues)
)

// Config contient les paramètres de configuration passés au pipeline.
type Config struct {
	RemoveOutliers  bool    // filtrer les valeurs extrêmes (défaut: non)
	LowerPercentile float64 // percentile bas du filtre (défaut 0.01)
	UpperPercentile float64 // percentile haut du filtre (défaut 0.99)
	Variant         Variant // défaut: monetary
	Verbose         bool    // logs détaillés + barre de progression
}

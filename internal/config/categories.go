package config

// CategoryWeights orders command categories in help and the README; lower
// first.
var CategoryWeights = map[string]int{
	"🎲 Gameplay":     10,
	"🎵 Music":        20,
	"🕯️ Information": 90,
}

package models

import "strings"

// Game identifies a trading card game.
type Game string

const (
	GameYuGiOh           Game = "yu-gi-oh"
	GamePokemon          Game = "pokemon"
	GameMagic            Game = "magic"
	GameOnePiece         Game = "one_piece"
	GameDragonBallFusion Game = "dragon_ball_fusion"
	GameDigimon          Game = "digimon"
	GameUnionArena       Game = "union_arena"
	GameGundam           Game = "gundam"
	GameStarWars         Game = "star_wars"
	GameRiftbound        Game = "riftbound"
	GameOther            Game = "other"
)

var games = []Game{
	GameYuGiOh, GamePokemon, GameMagic, GameOnePiece, GameDragonBallFusion,
	GameDigimon, GameUnionArena, GameGundam, GameStarWars, GameRiftbound, GameOther,
}

// Games returns every known game in declaration order.
func Games() []Game {
	out := make([]Game, len(games))
	copy(out, games)
	return out
}

// ParseGame resolves a game name case-insensitively. Hyphens and underscores are
// interchangeable except for yu-gi-oh, which also accepts "yugioh".
func ParseGame(s string) (Game, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "yugioh", "yu_gi_oh", "ygo":
		return GameYuGiOh, true
	case "mtg":
		return GameMagic, true
	}
	for _, g := range games {
		if s == string(g) || strings.ReplaceAll(s, "-", "_") == strings.ReplaceAll(string(g), "-", "_") {
			return g, true
		}
	}
	return "", false
}

func (g Game) String() string { return string(g) }

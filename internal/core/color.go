package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Palette for the amber-on-black HUD look.
const (
	ColorDefault      Color = iota
	ColorOrangeBright       // player, primary HUD text
	ColorOrangeGlow         // pickups, full momentum
	ColorOrangeDim          // lane markers, player zone
	ColorChaos              // obstacle fill
	ColorChaosOutline       // obstacle edge
	ColorTrainerInner       // popups, particles
	ColorAlert              // low momentum, game over
	ColorLaneLine           // lane dividers
	ColorGray               // secondary text
)

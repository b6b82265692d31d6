package sequence

// Level grades the difficulty recorded in sequence metadata:
//
//	1 — every motion is turnless and stays radial (in/out)
//	2 — turns appear but all orientations remain radial
//	3 — any non-radial orientation (clock/counter) appears
//
// Start-position entries count too: a non-radial start colours the whole
// sequence.
func Level(s SequenceData) int {
	level := 1
	for _, b := range s.Beats {
		for _, m := range b.Pictograph.Motions {
			if !m.StartOri.Radial() || !m.EndOri.Radial() {
				return 3
			}
			if m.Turns != 0 {
				level = 2
			}
		}
	}
	return level
}

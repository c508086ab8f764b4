package common

// Perft counts the leaf positions of the legal move tree of the given depth.
func Perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var result = 0
	var buffer [MaxMoves]Move
	var child Position
	for _, move := range p.GenerateMoves(buffer[:0]) {
		if p.MakeMove(move, &child) {
			if depth > 1 {
				result += Perft(&child, depth-1)
			} else {
				result++
			}
		}
	}
	return result
}

package tui

// logoFrames animate the splash: the cursor hops between panes.
var logoFrames = [4]string{
	frame(0),
	frame(1),
	frame(2),
	frame(3),
}

func frame(active int) string {
	cells := [4]string{"   ", "   ", "   ", "   "}
	cells[active] = " ▌ "
	return "╭───┬───╮\n" +
		"│" + cells[0] + "│" + cells[1] + "│\n" +
		"├───┼───┤\n" +
		"│" + cells[2] + "│" + cells[3] + "│\n" +
		"╰───┴───╯"
}

package main

func windowTitle(sim string) string {
	return "lifeboard - " + sim
}

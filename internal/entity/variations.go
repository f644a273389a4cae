package entity

import (
	"strings"

	"github.com/stemkit/kitbot/internal/kb"
)

// componentVariations maps a lowercase component name (or id) to the
// colloquial names kids use for it. Extending this table is a content
// change only.
var componentVariations = map[string][]string{
	"servo motor":        {"servo", "servo motors"},
	"potentiometer":      {"knob", "pot", "dial", "pot meter"},
	"dc motor":           {"motor", "dc motors", "gear motor"},
	"ultrasonic sensor":  {"ultrasonic", "distance sensor", "sonar"},
	"ir sensor":          {"infrared", "infrared sensor", "ir"},
	"ldr":                {"light sensor", "photoresistor", "ldr sensor"},
	"light sensor":       {"ldr", "photoresistor"},
	"rgb led":            {"rgb", "color led", "colour led", "multicolor led"},
	"led":                {"leds", "light bulb"},
	"buzzer":             {"beeper", "speaker"},
	"push button":        {"button", "switch button"},
	"battery pack":       {"battery", "batteries", "battery box"},
	"breadboard":         {"bread board"},
	"jumper wires":       {"jumper", "jumpers", "wires", "jumper cables"},
	"rain sensor":        {"water sensor", "raindrop sensor"},
	"temperature sensor": {"temp sensor", "thermometer"},
	"microcontroller":    {"controller board", "main board", "brain board"},
}

// Variations returns the lexical variations registered for a component.
func Variations(c kb.Component) []string {
	seen := make(map[string]bool)
	var out []string
	for _, key := range []string{normalize(c.Name), normalize(c.ID), normalize(strings.ReplaceAll(c.ID, "_", " "))} {
		for _, v := range componentVariations[key] {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

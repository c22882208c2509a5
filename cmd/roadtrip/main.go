/*
roadtrip serves the road trip planner's API and its static client.

Configure it with environment variables or a .env file;
confer package ranger for the full list.
*/
package main

import (
	"log"

	"github.com/xy-planning-network/roadtrip/ranger"
)

func main() {
	rng, err := ranger.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := rng.Guide(); err != nil {
		rng.EmitLogger().Error(err.Error(), nil)
	}
}

package main

import (
	"github.com/sahilchouksey/unifriend-api/app"
	"github.com/sirupsen/logrus"
)

func main() {
	// setup and run app
	if err := app.SetupAndRunServer(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

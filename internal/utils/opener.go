package utils

import (
	"fmt"
	"io"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

// URLOpener hands a URL to something that can navigate to it
type URLOpener func(url string) error

// launch is the platform launcher; tests swap it out
var launch = browser.OpenURL

func init() {
	// launcher chatter would tear the alt-screen UI
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// OpenURL opens url with the platform's default browser
func OpenURL(url string) error {
	if err := launch(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}
	logrus.Debugf("opened %s", url)
	return nil
}

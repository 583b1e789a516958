// Package host describes the application a binder serves: where its data
// lives and where its messages go.
package host

import (
	"github.com/sirupsen/logrus"
)

// DefaultFile is the configuration file used when no file is named.
const DefaultFile = "config.yml"

// Host is the plugin side of the binder.
type Host interface {
	// Name identifies the plugin in log output.
	Name() string
	// DataDir is the directory relative configuration paths resolve against.
	DataDir() string
	// Logger receives info and warning messages.
	Logger() *logrus.Entry
}

// Plugin is a Host with a fixed name and data directory.
type Plugin struct {
	name    string
	dataDir string
	log     *logrus.Entry
}

var _ Host = (*Plugin)(nil)

// NewPlugin returns a host logging through logger, or the logrus standard
// logger when logger is nil.
func NewPlugin(name, dataDir string, logger *logrus.Logger) *Plugin {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Plugin{
		name:    name,
		dataDir: dataDir,
		log:     logger.WithField("plugin", name),
	}
}

func (p *Plugin) Name() string {
	return p.name
}

func (p *Plugin) DataDir() string {
	return p.dataDir
}

func (p *Plugin) Logger() *logrus.Entry {
	return p.log
}

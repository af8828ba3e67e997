package packager

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Log forwarding policy for the platform's rotation agent: size-based
// rotation at 10MB, 5 generations, timestamp-suffixed, compressed.
const logRotationPolicy = `/var/app/current/logs/*.log {
    size 10M
    rotate 5
    missingok
    notifempty
    compress
    copytruncate
    dateext
    dateformat -%Y%m%d-%H%M%S
}
`

// optionSettings is the platform configuration fragment consumed by the
// hosting environment at boot.
type optionSettings struct {
	OptionSettings map[string]map[string]string `yaml:"option_settings"`
}

// platformFile describes a file the platform materializes on the instance.
type platformFile struct {
	Mode    string `yaml:"mode"`
	Owner   string `yaml:"owner"`
	Group   string `yaml:"group"`
	Content string `yaml:"content"`
}

type fileFragment struct {
	Files map[string]platformFile `yaml:"files"`
}

// writeProcessManifest generates the Procfile stating how to start the
// application, parameterized by the runtime-injected port.
func (p *Packager) writeProcessManifest() error {
	procfile := fmt.Sprintf("web: uvicorn %s --host 0.0.0.0 --port $PORT\n", p.platform.Entrypoint)
	if _, err := writeIfAbsent(filepath.Join(p.sourceDir, "Procfile"), []byte(procfile)); err != nil {
		return fmt.Errorf("failed to write process manifest: %w", err)
	}
	return nil
}

// writePlatformFragments generates the structured key/value documents the
// hosting environment reads at boot: the runtime entry path and the log
// forwarding rule.
func (p *Packager) writePlatformFragments() error {
	runtime, err := yaml.Marshal(optionSettings{
		OptionSettings: map[string]map[string]string{
			"aws:elasticbeanstalk:container:python": {
				"WSGIPath": p.platform.Entrypoint,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal runtime fragment: %w", err)
	}

	logging, err := yaml.Marshal(fileFragment{
		Files: map[string]platformFile{
			"/etc/logrotate.elasticbeanstalk.hourly/logrotate.elasticbeanstalk.applog.conf": {
				Mode:    "000644",
				Owner:   "root",
				Group:   "root",
				Content: logRotationPolicy,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to marshal logging fragment: %w", err)
	}

	fragments := map[string][]byte{
		"01-runtime.config": runtime,
		"02-logging.config": logging,
	}
	for name, content := range fragments {
		path := filepath.Join(p.sourceDir, ".ebextensions", name)
		if _, err := writeIfAbsent(path, content); err != nil {
			return fmt.Errorf("failed to write platform fragment %s: %w", name, err)
		}
	}
	return nil
}

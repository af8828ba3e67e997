// Package naming provides consistent naming functions for the deployment
// pipeline's remote resources.
//
// Infrastructure resources follow the pattern {app}-{type}; artifact version
// labels append a UTC timestamp so successive releases sort and compare
// strictly increasing.
package naming

import (
	"fmt"
	"time"
)

// versionTimeLayout orders labels lexicographically by build time.
const versionTimeLayout = "20060102-150405"

func AppBoundary(app string) string {
	return fmt.Sprintf("%s-web", app)
}

func DeploymentBucket(app, region string) string {
	return fmt.Sprintf("%s-deployments-%s", app, region)
}

func VersionLabel(app string, t time.Time) string {
	return fmt.Sprintf("%s-%s", app, t.UTC().Format(versionTimeLayout))
}

func ArtifactKey(versionLabel string) string {
	return fmt.Sprintf("releases/%s.zip", versionLabel)
}

func Channel(app string) string {
	return fmt.Sprintf("%s-alerts", app)
}

func Dashboard(app string) string {
	return fmt.Sprintf("%s-ops", app)
}

func AlertRule(app, short string) string {
	return fmt.Sprintf("%s-%s", app, short)
}

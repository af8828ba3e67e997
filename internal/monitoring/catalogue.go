package monitoring

import (
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/config"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/registry"
	"github.com/mariobrusarosco/better-call-buffet-sub000/internal/util/naming"
)

// Catalogue returns the fixed alert-rule set for the application and its
// data tier. The set is fixed; nothing is discovered at runtime.
// Data-tier rules are only emitted when the data store identifier is
// configured.
func Catalogue(cfg *config.Config, channelID string) []registry.AlertRuleSpec {
	envDims := map[string]string{"EnvironmentName": cfg.EnvironmentName}

	rules := []registry.AlertRuleSpec{
		{
			Name:             naming.AlertRule(cfg.AppName, "env-health"),
			Namespace:        "AWS/ElasticBeanstalk",
			Metric:           "EnvironmentHealth",
			Dimensions:       envDims,
			Statistic:        "Average",
			Comparator:       registry.ComparatorGreaterThanOrEqual,
			Threshold:        20,
			EvaluationWindow: 60,
			Periods:          5,
			Description:      "environment health left the Ok band",
		},
		{
			Name:             naming.AlertRule(cfg.AppName, "cpu-high"),
			Namespace:        "AWS/ElasticBeanstalk",
			Metric:           "CPUUser",
			Dimensions:       envDims,
			Statistic:        "Average",
			Comparator:       registry.ComparatorGreaterThan,
			Threshold:        80,
			EvaluationWindow: 300,
			Periods:          2,
			Description:      "compute saturation on the web tier",
		},
		{
			Name:             naming.AlertRule(cfg.AppName, "memory-high"),
			Namespace:        "CWAgent",
			Metric:           "mem_used_percent",
			Dimensions:       envDims,
			Statistic:        "Average",
			Comparator:       registry.ComparatorGreaterThan,
			Threshold:        85,
			EvaluationWindow: 300,
			Periods:          2,
			Description:      "memory saturation on the web tier",
		},
		{
			Name:             naming.AlertRule(cfg.AppName, "http-5xx"),
			Namespace:        "AWS/ElasticBeanstalk",
			Metric:           "ApplicationRequests5xx",
			Dimensions:       envDims,
			Statistic:        "Sum",
			Comparator:       registry.ComparatorGreaterThan,
			Threshold:        10,
			EvaluationWindow: 300,
			Periods:          1,
			Description:      "server error rate above floor",
		},
		{
			Name:             naming.AlertRule(cfg.AppName, "latency-high"),
			Namespace:        "AWS/ElasticBeanstalk",
			Metric:           "ApplicationLatencyAvg",
			Dimensions:       envDims,
			Statistic:        "Average",
			Comparator:       registry.ComparatorGreaterThan,
			Threshold:        2,
			EvaluationWindow: 300,
			Periods:          2,
			Description:      "average response time above 2s",
		},
		{
			// A request count below the floor catches silent outages that
			// error-rate rules never see.
			Name:             naming.AlertRule(cfg.AppName, "low-traffic"),
			Namespace:        "AWS/ElasticBeanstalk",
			Metric:           "ApplicationRequestsTotal",
			Dimensions:       envDims,
			Statistic:        "Sum",
			Comparator:       registry.ComparatorLessThan,
			Threshold:        1,
			EvaluationWindow: 900,
			Periods:          1,
			Description:      "request count below floor (possible silent outage)",
		},
	}

	if cfg.DataTier.InstanceID != "" {
		dbDims := map[string]string{"DBInstanceIdentifier": cfg.DataTier.InstanceID}
		rules = append(rules,
			registry.AlertRuleSpec{
				Name:             naming.AlertRule(cfg.AppName, "db-cpu-high"),
				Namespace:        "AWS/RDS",
				Metric:           "CPUUtilization",
				Dimensions:       dbDims,
				Statistic:        "Average",
				Comparator:       registry.ComparatorGreaterThan,
				Threshold:        80,
				EvaluationWindow: 300,
				Periods:          2,
				Description:      "data tier compute saturation",
			},
			registry.AlertRuleSpec{
				Name:             naming.AlertRule(cfg.AppName, "db-storage-low"),
				Namespace:        "AWS/RDS",
				Metric:           "FreeStorageSpace",
				Dimensions:       dbDims,
				Statistic:        "Average",
				Comparator:       registry.ComparatorLessThanOrEqual,
				Threshold:        2e9, // 2 GB floor
				EvaluationWindow: 300,
				Periods:          1,
				Description:      "data tier free storage below floor",
			},
			registry.AlertRuleSpec{
				Name:             naming.AlertRule(cfg.AppName, "db-connections-high"),
				Namespace:        "AWS/RDS",
				Metric:           "DatabaseConnections",
				Dimensions:       dbDims,
				Statistic:        "Average",
				Comparator:       registry.ComparatorGreaterThan,
				Threshold:        80,
				EvaluationWindow: 300,
				Periods:          2,
				Description:      "data tier connection count near ceiling",
			},
		)
	}

	for i := range rules {
		rules[i].ChannelID = channelID
	}
	return rules
}

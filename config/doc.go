/*
Package config contains a handful of helpers meant for managing common configuration options. There are currently:

    * Metrics, for picking and configuring a go-kit metrics provider
    * functions to load config structs from JSON files or environment variables

The Metrics type is meant to let servers embedding an activity tracker choose where its gauges land (statsd, dogstatsd, prometheus, graphite, expvar or nothing at all) without any code changes.
*/
package config

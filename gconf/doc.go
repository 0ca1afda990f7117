/*
Package gconf implements a configuration store intended to be used as a
global, in-database configuration of an extension.

Each extension stores a single configuration object under its package name.
It can be loaded from the genesis file (InitConfig) and later updated by the
configuration owner through a message handled by
UpdateConfigurationHandler.
*/
package gconf

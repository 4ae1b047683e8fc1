// Package shell is the application entry layer. It loads the controller's
// configuration, picks console or interactive mode, drives exactly one
// console run, and reports the outcome through the injected logger.
package shell

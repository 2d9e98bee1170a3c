// Package main is the entry point for the MapleDash character API.
//
//	@title			MapleDash Character API
//	@version		1.0
//	@description	Composite character lookup over the MapleStory TW Open API.
//
//	@BasePath		/
package main

func main() {
	Execute()
}

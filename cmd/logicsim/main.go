// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim runs logic circuits described in YAML files.
//
package main

func main() {
	Execute()
}

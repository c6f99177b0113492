// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package render builds the rendered representations the notification sink
transmits: the poll embed with its status line and vote buttons, and the
announcement embed with a humanized submission age. Rendering is pure; no
function here performs I/O.
*/
package render

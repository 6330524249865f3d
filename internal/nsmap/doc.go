// SPDX-License-Identifier: MPL-2.0

// Package nsmap builds the namespace map: the table from logical namespace
// names ("proj", "proj/tests", "aliasPath") to the physical directories they
// stand for.
//
// A map is built from explicit namespace bindings, from the include
// directories (given, or discovered under the project root) and from the
// sources bucket registered under the package name. Building never fails;
// problems with the input are reported as Diagnostics on the Result.
package nsmap

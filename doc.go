/*
Package altcfg reads and writes alt-config documents, the small configuration
format used by alt:V servers and resources.

A document is a mapping of keys to values. A value is a scalar, a list in
square brackets or a nested mapping in braces. Scalars may be bare or quoted
with ' or ", and # starts a comment:

	# server.cfg
	name: 'My Server'
	port: 7788
	modules: [ chat, 'free roam' ]
	voice: { bitrate: 64000 }

The package works on an untyped tree of *Node values rather than on Go
structs. Parse turns a document into a tree, the Node methods query and
modify it, and Marshal writes it back in canonical form:

	root, err := altcfg.Parse(data)
	if err != nil {
		// handle error
	}

	port := root.Get("port").ToNumberOr(7788)
	first := root.Get("modules").Index(0).ToStringOr("")

	root.Get("voice").Set("bitrate", altcfg.Number(128000))
	out, err := altcfg.Marshal(root)

Every scalar is a string. ToBool and ToNumber interpret it on demand, and the
Or variants return a default instead of failing. A nil *Node stands for a
missing value, so lookups can be chained without checks in between. Index
never changes the tree, while Get on a mapping inserts a none entry for a
missing key; Lookup is the read-only alternative.

The canonical form single quotes every scalar, sorts mapping keys, indents
nested containers and leaves out none values. Parsing canonical output gives
back an equal tree.

Parse errors are *ParseError values carrying the line, column and byte offset
of the failure. Use errors.Is with ErrUnexpectedEOF, ErrKeyExpected,
ErrUnexpectedToken, ErrDuplicateKey or ErrMaxDepth to tell them apart.

ValueOf and Node.ToAny convert between trees and plain Go values, and Node
implements json.Marshaler and the gopkg.in/yaml.v3 Marshaler.
*/
package altcfg

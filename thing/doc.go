// Package thing models the Web of Things Thing Description (TD) fetched from
// discovered devices, plus a compile-time mechanism for attaching extra typed
// fields to it.
//
// # Thing Descriptions
//
// A TD is the JSON document a device serves to describe itself. This package
// decodes it structurally into [Thing]. Interaction affordances (properties,
// actions, events) and security schemes are kept as raw JSON; the discovery
// engine only needs the document to be well formed and to expose its title
// and id.
//
// # Extensions
//
// Vocabularies layered on top of the core TD add members to the same JSON
// object. To read them with static types, callers describe each vocabulary as
// a struct implementing [Extension] and attach it to a [List]:
//
//	type Registration struct {
//	    Registration *struct {
//	        Created string `json:"created"`
//	        Expires string `json:"expires"`
//	    } `json:"registration,omitempty"`
//	}
//
//	func (Registration) ExtensionName() string { return "registration" }
//
//	var doc thing.Document[thing.Cons[Registration, thing.Nil]]
//	err := json.Unmarshal(body, &doc)
//	fmt.Println(doc.Title, doc.Ext.Head.Registration.Created)
//
// A list starts at [Nil] and grows by wrapping it in [Cons]. Every element
// decodes from the whole TD object, so extension fields sit next to the core
// fields rather than under a nested key. The list is a plain generic type:
// there is no registry, no reflection-driven merging and no runtime cost
// beyond decoding the same bytes once per attached extension.
//
// A type that does not implement [Extension] cannot be attached; the
// compiler rejects the instantiation.
package thing

package pod

const (
	contentTypeTurtle  = "text/turtle"
	contentTypePlain   = "text/plain"
	linkBasicContainer = `<http://www.w3.org/ns/ldp/BasicContainer>; rel="type"`

	containerDescription = "Container created by agents"
)

// containerTurtle builds the container description document posted on
// container creation, per the LDP primer's basic-container example. The name
// is embedded verbatim: names containing a double quote produce malformed
// Turtle.
func containerTurtle(name string) string {
	return "@prefix ldp: <http://www.w3.org/ns/ldp#>.\n" +
		"@prefix dcterms: <http://purl.org/dc/terms/>.\n" +
		"<> a ldp:Container, ldp:BasicContainer, ldp:Resource;\n" +
		"dcterms:title \"" + name + "\";\n" +
		"dcterms:description \"" + containerDescription + "\" ."
}

// ABOUTME: Recursive descent parser for DOT digraphs producing the in-memory Graph model.
// ABOUTME: Supports strict graphs, attribute lists, node/edge defaults, nested subgraphs, and chained edges.
package dot

// scope holds the defaults in effect inside one brace level.
type scope struct {
	nodeDefaults map[string]string
	edgeDefaults map[string]string
	subgraph     *Subgraph       // nil at the top level
	members      map[string]bool // node IDs already recorded in subgraph
	parent       *scope
}

type parser struct {
	tokens []Token
	pos    int
	graph  *Graph
	scope  *scope
	seen   map[[2]string]bool // edges already added, consulted for strict graphs
}

// Parse parses DOT source containing exactly one digraph.
func Parse(input string) (*Graph, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}

	p := &parser{
		tokens: tokens,
		seen:   make(map[[2]string]bool),
	}
	if err := p.parseGraph(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

func (p *parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *parser) peek(offset int) Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[idx]
}

func (p *parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

func (p *parser) expect(typ TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != typ {
		return tok, errorAt(tok.Line, tok.Col, "expected %v but got %v (%q)", typ, tok.Type, tok.Value)
	}
	p.advance()
	return tok, nil
}

func (p *parser) skipSemicolon() {
	if p.current().Type == TokenSemicolon {
		p.advance()
	}
}

// isID reports whether tok can serve as a DOT ID (node name, attribute key or value).
func isID(tok Token) bool {
	switch tok.Type {
	case TokenIdentifier, TokenString, TokenNumber:
		return true
	}
	return false
}

// parseGraph parses: 'strict'? 'digraph' ID? '{' stmt* '}' EOF
func (p *parser) parseGraph() error {
	strict := false
	if p.current().Type == TokenStrict {
		strict = true
		p.advance()
	}

	tok := p.current()
	switch tok.Type {
	case TokenDigraph:
		p.advance()
	case TokenGraph:
		return errorAt(tok.Line, tok.Col, "undirected graphs are not supported; use digraph")
	default:
		return errorAt(tok.Line, tok.Col, "expected 'digraph' but got %v (%q)", tok.Type, tok.Value)
	}

	name := ""
	if isID(p.current()) {
		name = p.advance().Value
	}
	p.graph = NewGraph(name)
	p.graph.Strict = strict
	p.scope = &scope{
		nodeDefaults: p.graph.NodeDefaults,
		edgeDefaults: p.graph.EdgeDefaults,
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}
	if err := p.parseStatements(); err != nil {
		return err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return errorAt(tok.Line, tok.Col, "unexpected %v (%q) after graph body; only one digraph per source is allowed", tok.Type, tok.Value)
	}
	return nil
}

func (p *parser) parseStatements() error {
	for p.current().Type != TokenRBrace && p.current().Type != TokenEOF {
		if err := p.parseStatement(); err != nil {
			return err
		}
		p.skipSemicolon()
	}
	return nil
}

func (p *parser) parseStatement() error {
	tok := p.current()

	switch tok.Type {
	case TokenGraph:
		p.advance()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return err
		}
		mergeAttrs(p.attrTarget(), attrs)
		return nil

	case TokenNode:
		p.advance()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return err
		}
		mergeAttrs(p.scope.nodeDefaults, attrs)
		return nil

	case TokenEdge:
		p.advance()
		attrs, err := p.parseAttrLists()
		if err != nil {
			return err
		}
		mergeAttrs(p.scope.edgeDefaults, attrs)
		return nil

	case TokenSubgraph, TokenLBrace:
		return p.parseSubgraph()

	case TokenIdentifier, TokenString, TokenNumber:
		if p.peek(1).Type == TokenEquals {
			return p.parseAssignment()
		}
		return p.parseNodeOrEdgeStmt()

	case TokenSemicolon:
		return nil

	default:
		return errorAt(tok.Line, tok.Col, "unexpected token %v (%q)", tok.Type, tok.Value)
	}
}

// attrTarget is where graph attributes land in the current scope.
func (p *parser) attrTarget() map[string]string {
	if p.scope.subgraph != nil {
		return p.scope.subgraph.Attrs
	}
	return p.graph.Attrs
}

// parseAssignment parses: ID '=' ID
func (p *parser) parseAssignment() error {
	key := p.advance().Value
	p.advance() // =
	val, err := p.parseValue()
	if err != nil {
		return err
	}
	p.attrTarget()[key] = val
	return nil
}

// parseSubgraph parses: ('subgraph' ID?)? '{' stmt* '}'
func (p *parser) parseSubgraph() error {
	sg := &Subgraph{Attrs: make(map[string]string)}
	if p.current().Type == TokenSubgraph {
		p.advance()
		if isID(p.current()) {
			sg.Name = p.advance().Value
		}
	}

	if _, err := p.expect(TokenLBrace); err != nil {
		return err
	}

	outer := p.scope
	p.scope = &scope{
		nodeDefaults: copyAttrs(outer.nodeDefaults),
		edgeDefaults: copyAttrs(outer.edgeDefaults),
		subgraph:     sg,
		members:      make(map[string]bool),
		parent:       outer,
	}

	if err := p.parseStatements(); err != nil {
		return err
	}
	if _, err := p.expect(TokenRBrace); err != nil {
		return err
	}

	p.scope = outer
	p.graph.Subgraphs = append(p.graph.Subgraphs, sg)

	if tok := p.current(); tok.Type == TokenArrow || tok.Type == TokenUndirected {
		return errorAt(tok.Line, tok.Col, "edges to or from subgraphs are not supported")
	}
	return nil
}

// parseNodeOrEdgeStmt parses a node statement or an edge chain starting with an ID.
func (p *parser) parseNodeOrEdgeStmt() error {
	id := p.advance().Value

	switch p.current().Type {
	case TokenArrow:
		return p.parseEdgeStmt(id)
	case TokenUndirected:
		tok := p.current()
		return errorAt(tok.Line, tok.Col, "undirected edges (--) are not supported; use directed edges (->)")
	}

	attrs, err := p.parseAttrLists()
	if err != nil {
		return err
	}
	p.ensureNode(id, attrs)
	return nil
}

// parseEdgeStmt parses: ID ( '->' ID )+ attr_list*
func (p *parser) parseEdgeStmt(firstID string) error {
	ids := []string{firstID}
	for p.current().Type == TokenArrow {
		p.advance()
		tok := p.current()
		if !isID(tok) {
			return errorAt(tok.Line, tok.Col, "expected node ID after -> but got %v (%q)", tok.Type, tok.Value)
		}
		ids = append(ids, tok.Value)
		p.advance()
	}
	if tok := p.current(); tok.Type == TokenUndirected {
		return errorAt(tok.Line, tok.Col, "undirected edges (--) are not supported; use directed edges (->)")
	}

	attrs, err := p.parseAttrLists()
	if err != nil {
		return err
	}

	for _, id := range ids {
		p.ensureNode(id, nil)
	}

	// A -> B -> C expands to A->B, B->C
	for i := 0; i < len(ids)-1; i++ {
		key := [2]string{ids[i], ids[i+1]}
		if p.graph.Strict && p.seen[key] {
			continue
		}
		p.seen[key] = true

		edgeAttrs := copyAttrs(p.scope.edgeDefaults)
		mergeAttrs(edgeAttrs, attrs)
		p.graph.AddEdge(&Edge{From: key[0], To: key[1], Attrs: edgeAttrs})
	}
	return nil
}

// ensureNode creates a node with the scope's defaults if it does not exist,
// applies explicit attributes, and records membership in enclosing subgraphs.
func (p *parser) ensureNode(id string, explicit map[string]string) {
	node := p.graph.FindNode(id)
	if node == nil {
		node = &Node{ID: id, Attrs: copyAttrs(p.scope.nodeDefaults)}
		p.graph.AddNode(node)
	}
	mergeAttrs(node.Attrs, explicit)

	for s := p.scope; s != nil && s.subgraph != nil; s = s.parent {
		if !s.members[id] {
			s.members[id] = true
			s.subgraph.NodeIDs = append(s.subgraph.NodeIDs, id)
		}
	}
}

// parseAttrLists parses zero or more: '[' (ID '=' ID (','|';')?)* ']'
func (p *parser) parseAttrLists() (map[string]string, error) {
	attrs := make(map[string]string)
	for p.current().Type == TokenLBracket {
		p.advance()
		for p.current().Type != TokenRBracket {
			tok := p.current()
			if !isID(tok) {
				return nil, errorAt(tok.Line, tok.Col, "expected attribute key but got %v (%q)", tok.Type, tok.Value)
			}
			key := p.advance().Value
			if _, err := p.expect(TokenEquals); err != nil {
				return nil, err
			}
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			attrs[key] = val

			if t := p.current().Type; t == TokenComma || t == TokenSemicolon {
				p.advance()
			}
		}
		p.advance() // ]
	}
	return attrs, nil
}

func (p *parser) parseValue() (string, error) {
	tok := p.current()
	if !isID(tok) {
		return "", errorAt(tok.Line, tok.Col, "expected value but got %v (%q)", tok.Type, tok.Value)
	}
	p.advance()
	return tok.Value, nil
}

func copyAttrs(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func mergeAttrs(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

/*
Package semtok turns a parsed GABC document into semantic tokens for editor
highlighting.

Token Sources:
-------------

	Document                 Semantic Token
	--------                 --------------
	Header name       ->     property
	Header value      ->     string
	Comment           ->     comment
	Lyric text        ->     string
	Clef              ->     keyword (declaration | modification)
	Pitch             ->     variable
	Shape             ->     function
	Alteration        ->     operator
	Ictus/episema/... ->     decorator
	Bar / spacing     ->     operator
	Attribute         ->     macro
	NABC glyph code   ->     type
	NABC pitch        ->     variable
	NABC modifier     ->     decorator
	Sub-forms         ->     parameter
	Unknown           ->     (deprecated modifier on the surrounding type)

Positions:
---------
Every token lies on one line. Ranges are in UTF-16 code units, which is what
the LSP encoding expects, so the encoder never has to look at the text again.

	tokens := semtok.GetTokensForText(ctx, content)
	data, err := semtok.Encode(tokens)
*/
package semtok

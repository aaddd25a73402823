/*
Package corpus stores named word sequences in a SQLite database so models can
be rebuilt without re-reading and re-tokenizing the source text.

Only the tokens are stored; n-gram models are always rebuilt in memory from
them. Vocabulary is shared across documents.
*/
package corpus

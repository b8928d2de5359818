/*
Package relay implements a forwarding pair of entities over an injected
ledger service.

A Relay accepts signed transfers addressed to its account. Every unit of
value it accepts is forwarded to the Receiver it constructed, inside the
same ledger transaction that accepts the value. The caller's nonce spend,
the move into the relay and the move into the receiver commit or roll back
together, so value is never left sitting in the relay and a rejection by
the receiver unwinds the entire acceptance. Outside of a transaction the
relay's balance reads zero.

The relay constructs and owns exactly one receiver. Constructing either
entity writes nothing to the ledger. Their accounts spring into existence
on the first value they are credited, which means a construction failure
anywhere in the chain, including inside the receiver's constructor, leaves
the ledger untouched. There is no partially constructed pair to clean up.

Both entities hold nothing but their account id and the ledger service
they were handed. Balances live in the ledger, so the pair works the same
no matter which process hosts it. Taking a pair out of service is a single
transaction as well: Decommission drains the receiver and the relay into a
beneficiary and closes both accounts, and a closed account rejects every
later transfer. Who may order a decommission is a hosting policy, not a
property of the pair.
*/
package relay

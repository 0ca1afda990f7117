/*
Package orm provides typed access to the key value store.

State is split into prefixed sections called buckets. Each bucket holds a
single type of object under a primary key and may maintain any number of
secondary indexes pointing back to primary keys. Buckets and their indexes
can be registered in a query router so that clients can read them.
*/
package orm

/*
Package processor provides code generation for the Firestore ORM.

The processor reads OpenAPI specifications with vendor extensions and
generates Go code for automatic collection registration.

OpenAPI Extension:
The processor looks for the x-firestore-collection vendor extension:

	UserProfile:
	  type: object
	  x-firestore-collection:
	    path: "users"
	    idField: "Id"
	  properties:
	    id:
	      type: string
	    email:
	      type: string

Generated Code:
The processor generates registration code:

	func init() {
	    registry.RegisterCollectionMap[UserProfile](registry.CollectionMap{
	        Path:    "users",
	        IDField: "Id",
	    })

	    registry.RegisterType("users", func(snap *firestore.DocumentSnapshot) (interface{}, error) {
	        v := &UserProfile{}
	        if err := snap.DataTo(v); err != nil {
	            return nil, err
	        }
	        v.Id = snap.Ref.ID
	        return v, nil
	    })
	}

The generated decode functions assume the ID field is a plain string.
Subcollection paths keep their macros: path "users/{UserId}/orders"
registers the "orders" collection group.
*/
package processor

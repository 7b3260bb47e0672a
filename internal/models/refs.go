package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// ContainsRef indica si la referencia ya está en la secuencia.
// La comparación es por identificador, no por documento.
func ContainsRef(refs []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, r := range refs {
		if r == id {
			return true
		}
	}
	return false
}

// AppendUnique agrega la referencia solo si no estaba presente.
// Si ya estaba, devuelve la secuencia sin cambios.
func AppendUnique(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	if ContainsRef(refs, id) {
		return refs
	}
	return append(refs, id)
}

// RemoveRef elimina todas las apariciones de la referencia. No es un
// error que la referencia no estuviera presente.
func RemoveRef(refs []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(refs))
	for _, r := range refs {
		if r != id {
			out = append(out, r)
		}
	}
	return out
}
